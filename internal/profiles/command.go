package profiles

import "github.com/Flogerbe/HelloCSEFlorian/pkg/validation"

// CreateCommand carries raw create input. Image holds an *Upload, null, or
// is absent.
type CreateCommand struct {
	Nom    validation.Value
	Prenom validation.Value
	Statut validation.Value
	Image  validation.Value
}

// UpdateCommand carries raw update input. Absent fields are left unchanged;
// an explicit null image removes the current image.
type UpdateCommand struct {
	Nom    validation.Value
	Prenom validation.Value
	Statut validation.Value
	Image  validation.Value
}

// changes is validated input with absent fields as nil.
type changes struct {
	nom      *string
	prenom   *string
	statut   *Statut
	setImage bool
	image    *Upload
}

func (c CreateCommand) values() map[string]validation.Value {
	return map[string]validation.Value{
		"nom":    c.Nom,
		"prenom": c.Prenom,
		"statut": c.Statut,
		"image":  c.Image,
	}
}

func (c UpdateCommand) values() map[string]validation.Value {
	return map[string]validation.Value{
		"nom":    c.Nom,
		"prenom": c.Prenom,
		"statut": c.Statut,
		"image":  c.Image,
	}
}

// validate checks values against rules and extracts the changes.
func validate(rules validation.Set, values map[string]validation.Value) (changes, error) {
	if err := rules.Check(values).Err(); err != nil {
		return changes{}, err
	}

	var c changes
	if s, ok := values["nom"].String(); ok {
		c.nom = &s
	}
	if s, ok := values["prenom"].String(); ok {
		c.prenom = &s
	}
	if s, ok := values["statut"].String(); ok {
		st := Statut(s)
		c.statut = &st
	}
	if img := values["image"]; img.Present {
		c.setImage = true
		c.image, _ = img.Raw.(*Upload)
	}
	return c, nil
}
