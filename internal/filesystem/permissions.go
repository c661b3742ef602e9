package filesystem

import (
	"fmt"
	"strconv"
)

// Permission bits, combined with a bitwise OR, e.g.
// PermOwnerAll|PermGroupRead == 0o740.
const (
	PermOwnerNone    uint32 = 0
	PermOwnerExecute uint32 = 0o100
	PermOwnerWrite   uint32 = 0o200
	PermOwnerRead    uint32 = 0o400
	PermOwnerAll            = PermOwnerExecute | PermOwnerWrite | PermOwnerRead

	PermGroupNone    uint32 = 0
	PermGroupExecute uint32 = 0o010
	PermGroupWrite   uint32 = 0o020
	PermGroupRead    uint32 = 0o040
	PermGroupAll            = PermGroupExecute | PermGroupWrite | PermGroupRead

	PermOtherNone    uint32 = 0
	PermOtherExecute uint32 = 0o001
	PermOtherWrite   uint32 = 0o002
	PermOtherRead    uint32 = 0o004
	PermOtherAll            = PermOtherExecute | PermOtherWrite | PermOtherRead
)

// Permissions returns the full mode of the path, including the file type bits.
func (i *Item) Permissions() (uint32, error) {
	_, st, err := i.statPath()
	if err != nil {
		return 0, fmt.Errorf("(fs-perms) %w", err)
	}

	return st.Mode, nil
}

// CheckPermissions reports whether all bits of mask are set on the path.
func (i *Item) CheckPermissions(mask uint32) (bool, error) {
	perms, err := i.Permissions()
	if err != nil {
		return false, err
	}

	return perms&mask == mask, nil
}

// SetPermissions changes the permission bits of the path.
func (i *Item) SetPermissions(mode uint32) error {
	path, err := i.Path()
	if err != nil {
		return err
	}

	if err := i.handler.unixHandler.Chmod(path, mode); err != nil {
		return fmt.Errorf("(fs-chmod) cannot set permissions of %s to %o: %w", path, mode, err)
	}
	i.handler.invalidate(path)

	return nil
}

// OwnerID returns the numeric user ID owning the path.
func (i *Item) OwnerID() (uint32, error) {
	_, st, err := i.statPath()
	if err != nil {
		return 0, fmt.Errorf("(fs-owner) %w", err)
	}

	return st.Uid, nil
}

// GroupID returns the numeric group ID owning the path.
func (i *Item) GroupID() (uint32, error) {
	_, st, err := i.statPath()
	if err != nil {
		return 0, fmt.Errorf("(fs-group) %w", err)
	}

	return st.Gid, nil
}

// SetOwnerID changes the owning user of the path.
func (i *Item) SetOwnerID(uid int) error {
	path, err := i.Path()
	if err != nil {
		return err
	}

	if err := i.handler.unixHandler.Chown(path, uid, -1); err != nil {
		return fmt.Errorf("(fs-chown) cannot set owner of %s to %d: %w", path, uid, err)
	}
	i.handler.invalidate(path)

	return nil
}

// SetGroupID changes the owning group of the path.
func (i *Item) SetGroupID(gid int) error {
	path, err := i.Path()
	if err != nil {
		return err
	}

	if err := i.handler.unixHandler.Chown(path, -1, gid); err != nil {
		return fmt.Errorf("(fs-chgrp) cannot change group of %s to %d: %w", path, gid, err)
	}
	i.handler.invalidate(path)

	return nil
}

// SetGroupName changes the owning group of the path, looking up the group by
// its name.
func (i *Item) SetGroupName(name string) error {
	path, err := i.Path()
	if err != nil {
		return err
	}

	group, err := i.handler.osHandler.LookupGroup(name)
	if err != nil {
		return fmt.Errorf("(fs-chgrp) cannot change group of %s to %s: %w", path, name, err)
	}

	gid, err := strconv.Atoi(group.Gid)
	if err != nil {
		return fmt.Errorf("(fs-chgrp) cannot change group of %s to %s: invalid gid %q: %w", path, name, group.Gid, err)
	}

	if err := i.handler.unixHandler.Chown(path, -1, gid); err != nil {
		return fmt.Errorf("(fs-chgrp) cannot change group of %s to %s: %w", path, name, err)
	}
	i.handler.invalidate(path)

	return nil
}
