package model

import "fmt"

type IdentityKind string

const (
	IdentityRegistered IdentityKind = "user"
	IdentityGuest      IdentityKind = "guest"
)

// VoterIdentity is the key used to enforce one ballot per voter per poll.
// Registered users and guests share the same identity space but are tagged by
// kind so a guest fingerprint can never collide with a user id.
type VoterIdentity struct {
	Kind IdentityKind
	ID   string
}

func RegisteredVoter(userID string) VoterIdentity {
	return VoterIdentity{Kind: IdentityRegistered, ID: userID}
}

func GuestVoter(fingerprint string) VoterIdentity {
	return VoterIdentity{Kind: IdentityGuest, ID: fingerprint}
}

func (v VoterIdentity) IsZero() bool {
	return v.Kind == "" || v.ID == ""
}

func (v VoterIdentity) String() string {
	return fmt.Sprintf("%s:%s", v.Kind, v.ID)
}
