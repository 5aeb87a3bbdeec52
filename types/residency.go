// Package types
package types

// ResidencyState is the verification flag stored per wallet address.
type ResidencyState int

const (
	StateUnknown ResidencyState = iota
	StateVerified
	StateRejected
)

func (s ResidencyState) String() string {
	switch s {
	case StateVerified:
		return "verified"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

func (s ResidencyState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type VerificationStatus struct {
	Address string         `json:"address"`
	State   ResidencyState `json:"state"`
}

// ResidencyRecord is the persisted form of a decision, used by document stores.
type ResidencyRecord struct {
	Key       string `json:"key" bson:"key"`
	Value     string `json:"value" bson:"value"`
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`
}
