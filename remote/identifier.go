package remote

import (
	"errors"
	"strings"
)

// IdentifierKind tells the service how to interpret an Identifier value.
type IdentifierKind string

const (
	KindEmail         IdentifierKind = "email"
	KindAccountNumber IdentifierKind = "accountNumber"
)

var ErrInvalidIdentifier = errors.New("invalid identifier")

// Identifier names the account a recovery request is about. It replaces
// overloading an email field with an account number.
type Identifier struct {
	Kind  IdentifierKind `json:"kind"`
	Value string         `json:"value"`
}

func EmailIdentifier(email string) Identifier {
	return Identifier{Kind: KindEmail, Value: strings.TrimSpace(email)}
}

func AccountNumberIdentifier(accountNumber string) Identifier {
	return Identifier{Kind: KindAccountNumber, Value: strings.TrimSpace(accountNumber)}
}

func (id Identifier) Validate() error {
	switch id.Kind {
	case KindEmail, KindAccountNumber:
	default:
		return ErrInvalidIdentifier
	}
	if id.Value == "" {
		return ErrInvalidIdentifier
	}
	return nil
}

func (id Identifier) String() string {
	return string(id.Kind) + ":" + id.Value
}
