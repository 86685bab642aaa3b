package booking

import (
	"crypto/rand"
	"regexp"
)

// Reference is the human-facing booking code, RES- followed by 8 uppercase
// alphanumerics. Collision resistance comes from the ledger's unique
// constraint, not from the generator.
type Reference string

const (
	referencePrefix   = "RES-"
	referenceLength   = 8
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var referencePattern = regexp.MustCompile(`^RES-[A-Z0-9]{8}$`)

func NewReference(raw string) (Reference, error) {
	if !referencePattern.MatchString(raw) {
		return "", ErrInvalidReference
	}
	return Reference(raw), nil
}

func (r Reference) String() string {
	return string(r)
}

func (r Reference) IsZero() bool {
	return r == ""
}

type ReferenceGenerator interface {
	Generate() Reference
}

type RandomReferenceGenerator struct{}

func NewRandomReferenceGenerator() *RandomReferenceGenerator {
	return &RandomReferenceGenerator{}
}

func (g *RandomReferenceGenerator) Generate() Reference {
	buf := make([]byte, referenceLength)
	// crypto/rand never fails on supported platforms; Read panics otherwise,
	// which is preferable to issuing predictable codes.
	if _, err := rand.Read(buf); err != nil {
		panic("reference generator: " + err.Error())
	}
	code := make([]byte, referenceLength)
	for i, b := range buf {
		code[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return Reference(referencePrefix + string(code))
}
