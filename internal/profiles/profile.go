// Package profiles manages public profiles: their records, their images in
// blob storage, and the public and administrative views of them.
package profiles

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Statut is the lifecycle state of a profile. Only actif profiles are
// publicly listed.
type Statut string

const (
	StatutInactif   Statut = "inactif"
	StatutEnAttente Statut = "en_attente"
	StatutActif     Statut = "actif"
)

// DefaultStatut applies when a profile is created without a statut.
const DefaultStatut = StatutEnAttente

// Statuts lists every statut in display order.
var Statuts = []Statut{StatutInactif, StatutEnAttente, StatutActif}

// ParseStatut validates s as a Statut.
func ParseStatut(s string) (Statut, error) {
	for _, st := range Statuts {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid statut %q", s)
}

// Profile is the administrative view with every field.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Nom       string    `json:"nom"`
	Prenom    string    `json:"prenom"`
	Image     *string   `json:"image"`
	Statut    Statut    `json:"statut"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicProfile is the unauthenticated view. It has no statut field.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Nom       string    `json:"nom"`
	Prenom    string    `json:"prenom"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public projects p onto the public view.
func (p Profile) Public() PublicProfile {
	return PublicProfile{
		ID:        p.ID,
		Nom:       p.Nom,
		Prenom:    p.Prenom,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PublicList projects every profile onto the public view.
func PublicList(ps []Profile) []PublicProfile {
	out := make([]PublicProfile, len(ps))
	for i, p := range ps {
		out[i] = p.Public()
	}
	return out
}

// Upload is an image file received with a create or update request.
type Upload struct {
	Filename string
	Size     int64
	Data     []byte
}
