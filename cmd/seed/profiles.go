package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Flogerbe/HelloCSEFlorian/internal/profiles"
)

//go:embed seeds/*.json
var seedFiles embed.FS

// ProfileSeedData is the layout of a profile seed file.
type ProfileSeedData struct {
	Profiles []ProfileSeed `json:"profiles"`
}

type ProfileSeed struct {
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Statut string `json:"statut"`
}

// ProfileSeeder inserts sample profiles without images. A profile whose
// nom and prenom already exist is skipped.
type ProfileSeeder struct {
	file string
}

func (s *ProfileSeeder) Name() string {
	return "profiles"
}

func (s *ProfileSeeder) Description() string {
	return "Seeds sample profiles across every statut"
}

// SetFile replaces the embedded seed data with an external file.
func (s *ProfileSeeder) SetFile(path string) {
	s.file = path
}

func (s *ProfileSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := s.loadSeedData()
	if err != nil {
		return err
	}

	for _, p := range data.Profiles {
		statut, err := profiles.ParseStatut(p.Statut)
		if err != nil {
			return fmt.Errorf("profile %s %s: %w", p.Prenom, p.Nom, err)
		}

		var exists bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM profiles WHERE nom = $1 AND prenom = $2)`,
			p.Nom, p.Prenom,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check profile %s %s: %w", p.Prenom, p.Nom, err)
		}
		if exists {
			continue
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO profiles (id, nom, prenom, statut) VALUES ($1, $2, $3, $4)`,
			uuid.New(), p.Nom, p.Prenom, string(statut),
		)
		if err != nil {
			return fmt.Errorf("insert profile %s %s: %w", p.Prenom, p.Nom, err)
		}
	}

	return nil
}

func (s *ProfileSeeder) loadSeedData() (*ProfileSeedData, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/profiles.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data ProfileSeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &data, nil
}
