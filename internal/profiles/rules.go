package profiles

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/validation"
)

const maxNameRunes = 100

// maxImagePixels bounds the dimensions a header may declare before the body
// is decoded.
const maxImagePixels = 40_000_000

const (
	MsgCreated = "Profil créé avec succès."
	MsgUpdated = "Profil mis à jour avec succès."
	MsgDeleted = "Profil supprimé avec succès."
)

const (
	msgNomRequired    = "Le nom est obligatoire."
	msgNomFilled      = "Le nom ne peut pas être vide."
	msgNomString      = "Le nom doit être une chaîne de caractères."
	msgNomMax         = "Le nom ne doit pas dépasser 100 caractères."
	msgPrenomRequired = "Le prénom est obligatoire."
	msgPrenomFilled   = "Le prénom ne peut pas être vide."
	msgPrenomString   = "Le prénom doit être une chaîne de caractères."
	msgPrenomMax      = "Le prénom ne doit pas dépasser 100 caractères."
	msgImage          = "Le fichier doit être une image."
	msgImageMimes     = "L'image doit être au format jpg, jpeg, png ou webp."
	msgStatut         = "Le statut doit être : inactif, en_attente ou actif."
)

// allowedFormats maps accepted decoder format names to stored extensions.
var allowedFormats = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"webp": ".webp",
}

func statutNames() []string {
	names := make([]string, len(Statuts))
	for i, s := range Statuts {
		names[i] = string(s)
	}
	return names
}

// createRules requires both names.
func createRules(maxImageBytes int64) validation.Set {
	return validation.Set{
		{Name: "nom", Rules: []validation.Rule{
			validation.Required(msgNomRequired),
			validation.String(msgNomString),
			validation.MaxRunes(maxNameRunes, msgNomMax),
		}},
		{Name: "prenom", Rules: []validation.Rule{
			validation.Required(msgPrenomRequired),
			validation.String(msgPrenomString),
			validation.MaxRunes(maxNameRunes, msgPrenomMax),
		}},
		{Name: "image", Rules: imageRules(maxImageBytes)},
		{Name: "statut", Rules: []validation.Rule{
			validation.OneOf(statutNames(), msgStatut),
		}},
	}
}

// updateRules accept absent names but reject blank ones.
func updateRules(maxImageBytes int64) validation.Set {
	return validation.Set{
		{Name: "nom", Rules: []validation.Rule{
			validation.Filled(msgNomFilled),
			validation.String(msgNomString),
			validation.MaxRunes(maxNameRunes, msgNomMax),
		}},
		{Name: "prenom", Rules: []validation.Rule{
			validation.Filled(msgPrenomFilled),
			validation.String(msgPrenomString),
			validation.MaxRunes(maxNameRunes, msgPrenomMax),
		}},
		{Name: "image", Rules: imageRules(maxImageBytes)},
		{Name: "statut", Rules: []validation.Rule{
			validation.OneOf(statutNames(), msgStatut),
		}},
	}
}

// imageRules accept null, then require a decodable image in an allowed
// format within the size limit.
func imageRules(maxBytes int64) []validation.Rule {
	return []validation.Rule{
		isImage(maxBytes),
		imageMimes,
		imageMaxSize(maxBytes),
	}
}

// isImage decodes the whole upload. Uploads over maxBytes are only checked
// up to their header and left to the size rule.
func isImage(maxBytes int64) validation.Rule {
	return func(v validation.Value) string {
		if !v.Present || v.Raw == nil {
			return ""
		}
		u, ok := v.Raw.(*Upload)
		if !ok || u == nil {
			return msgImage
		}

		cfg, _, err := image.DecodeConfig(bytes.NewReader(u.Data))
		if err != nil {
			return msgImage
		}
		if int64(len(u.Data)) > maxBytes {
			return ""
		}
		if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
			return msgImage
		}
		if _, _, err := image.Decode(bytes.NewReader(u.Data)); err != nil {
			return msgImage
		}
		return ""
	}
}

func imageMimes(v validation.Value) string {
	u, ok := v.Raw.(*Upload)
	if !ok || u == nil {
		return ""
	}
	format, _ := imageFormat(u.Data)
	if _, ok := allowedFormats[format]; !ok {
		return msgImageMimes
	}
	return ""
}

func imageMaxSize(maxBytes int64) validation.Rule {
	msg := fmt.Sprintf("L'image ne doit pas dépasser %d Ko.", maxBytes/1024)
	return func(v validation.Value) string {
		u, ok := v.Raw.(*Upload)
		if !ok || u == nil {
			return ""
		}
		if int64(len(u.Data)) > maxBytes {
			return msg
		}
		return ""
	}
}

// imageFormat decodes only the image header and returns the decoder name.
func imageFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	return format, err
}
