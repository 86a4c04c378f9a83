package core

import "encoding/json"

// Sentinel strings used in the persisted documents. The tagged Owner type
// keeps them from colliding with a real user's chosen display name inside
// the engine; they only exist at the serialization boundary.
const (
	sentinelUnassigned = "unassigned"
	sentinelShared     = "shared"
)

type ownerKind int

const (
	ownerUser ownerKind = iota
	ownerUnassigned
	ownerShared
)

// Owner identifies who an item belongs to: a concrete user (by display
// name), nobody, or the household's shared pool.
type Owner struct {
	kind ownerKind
	name string
}

func UserOwner(displayName string) Owner {
	return Owner{kind: ownerUser, name: displayName}
}

func Unassigned() Owner { return Owner{kind: ownerUnassigned} }

func SharedPool() Owner { return Owner{kind: ownerShared} }

// ParseOwner maps a persisted assignedUser string back to an Owner.
// Empty strings count as unassigned; the original data sometimes carried
// them after interrupted writes.
func ParseOwner(s string) Owner {
	switch s {
	case "", sentinelUnassigned:
		return Unassigned()
	case sentinelShared:
		return SharedPool()
	default:
		return UserOwner(s)
	}
}

func (o Owner) IsUser() bool { return o.kind == ownerUser }
func (o Owner) IsUnassigned() bool { return o.kind == ownerUnassigned }
func (o Owner) IsShared() bool { return o.kind == ownerShared }

// UserName returns the display name and whether the owner is a user.
func (o Owner) UserName() (string, bool) {
	return o.name, o.kind == ownerUser
}

// Is reports whether the owner is the given user.
func (o Owner) Is(displayName string) bool {
	return o.kind == ownerUser && o.name == displayName
}

func (o Owner) String() string {
	switch o.kind {
	case ownerUnassigned:
		return sentinelUnassigned
	case ownerShared:
		return sentinelShared
	default:
		return o.name
	}
}

func (o Owner) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = ParseOwner(s)
	return nil
}
