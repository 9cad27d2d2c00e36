package domain

// Location is a single business site whose reviews are managed.
// IDs are unique within their source list only: built-in ids look like
// "loc1", provider ids are resource names like "accounts/1/locations/2".
type Location struct {
	ID      string
	Name    string
	Address string
}

// LocationSource tells where a location list came from. The two sources are
// never merged.
type LocationSource string

const (
	LocationSourceBuiltin LocationSource = "builtin"
	LocationSourceGoogle  LocationSource = "google"
)

func (s LocationSource) String() string { return string(s) }
