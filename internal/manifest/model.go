package manifest

// Workspace is the generated Cargo workspace manifest.
type Workspace struct {
	// Members are slash-separated paths relative to the manifest's directory,
	// in discovery order.
	Members []string `toml:"members"`
}

// Diff describes how a manifest on disk differs from a freshly discovered one.
type Diff struct {
	Added   []string // discovered but not listed
	Removed []string // listed but no longer discovered
}

// Empty reports whether the two member lists hold the same set of paths.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Compare reports which members of want are missing from have, and which
// members of have are no longer in want. Added keeps want's order, Removed
// keeps have's.
func Compare(have, want []string) Diff {
	haveSet := toSet(have)
	wantSet := toSet(want)

	var d Diff
	for _, m := range want {
		if !haveSet[m] {
			d.Added = append(d.Added, m)
		}
	}
	for _, m := range have {
		if !wantSet[m] {
			d.Removed = append(d.Removed, m)
		}
	}
	return d
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
