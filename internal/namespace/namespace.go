// Package namespace resolves the well-known name-based UUID namespaces.
package namespace

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Namespace is a predefined namespace from RFC 9562.
type Namespace struct {
	Label string `json:"label" yaml:"label"`
	Name  string `json:"name" yaml:"name"`
	UUID  string `json:"uuid" yaml:"uuid"`
}

var predefined = []Namespace{
	{Label: "dns", Name: "DNS", UUID: uuid.NameSpaceDNS.String()},
	{Label: "url", Name: "URL", UUID: uuid.NameSpaceURL.String()},
	{Label: "oid", Name: "OID", UUID: uuid.NameSpaceOID.String()},
	{Label: "x500", Name: "X.500", UUID: uuid.NameSpaceX500.String()},
}

// All returns the predefined namespaces.
func All() []Namespace {
	out := make([]Namespace, len(predefined))
	copy(out, predefined)
	return out
}

// Lookup finds a predefined namespace by label or display name.
func Lookup(label string) (Namespace, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, ns := range predefined {
		if l == ns.Label || l == strings.ToLower(ns.Name) {
			return ns, true
		}
	}
	return Namespace{}, false
}

// Resolve turns a label or a UUID string into a namespace UUID.
func Resolve(s string) (uuid.UUID, error) {
	if ns, ok := Lookup(s); ok {
		return uuid.MustParse(ns.UUID), nil
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid namespace %q: %w", s, err)
	}
	return id, nil
}
