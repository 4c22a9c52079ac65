package installer

import (
	"fmt"
	"strings"
)

// Provider identifies the database a project is scaffolded for.
type Provider string

// Known database providers. Only providers with a matching template under
// start-database/ can be installed; the others are accepted by the CLI but
// have no local container to manage.
const (
	ProviderPostgres    Provider = "postgres"
	ProviderMySQL       Provider = "mysql"
	ProviderSQLite      Provider = "sqlite"
	ProviderPlanetScale Provider = "planetscale"
)

// KnownProviders lists every provider in display order.
var KnownProviders = []Provider{
	ProviderPostgres,
	ProviderMySQL,
	ProviderSQLite,
	ProviderPlanetScale,
}

// String implements fmt.Stringer.
func (p Provider) String() string {
	return string(p)
}

// IsKnown reports whether p is one of KnownProviders.
func (p Provider) IsKnown() bool {
	for _, k := range KnownProviders {
		if p == k {
			return true
		}
	}
	return false
}

// ParseProvider converts user input into a Provider. Matching is case-insensitive.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsKnown() {
		return "", fmt.Errorf("unknown database provider %q (expected one of %s)", s, joinProviders(KnownProviders))
	}
	return p, nil
}

func joinProviders(ps []Provider) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
