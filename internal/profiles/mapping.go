package profiles

import (
	"net/url"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/query"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/repository"
)

var projection = query.NewProjectionMap("public", "profiles", "p").
	Project("id", "Id").
	Project("nom", "Nom").
	Project("prenom", "Prenom").
	Project("image", "Image").
	Project("statut", "Statut").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "CreatedAt"},
	{Field: "Id"},
}

const returning = `RETURNING id, nom, prenom, image, statut, created_at, updated_at`

func scanProfile(s repository.Scanner) (Profile, error) {
	var p Profile
	err := s.Scan(
		&p.ID,
		&p.Nom,
		&p.Prenom,
		&p.Image,
		&p.Statut,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Filters narrows the administrative listing.
type Filters struct {
	Statut *Statut
	Search *string
}

// FiltersFromQuery reads statut and search. An unknown statut is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("statut"); s != "" {
		if st, err := ParseStatut(s); err == nil {
			f.Statut = &st
		}
	}

	if s := values.Get("search"); s != "" {
		f.Search = &s
	}

	return f
}

// Apply adds the filter conditions to b.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var statut any
	if f.Statut != nil {
		statut = string(*f.Statut)
	}
	return b.
		WhereEquals("Statut", statut).
		WhereSearch(f.Search, "Nom", "Prenom")
}
