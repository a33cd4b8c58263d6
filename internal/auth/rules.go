package auth

import "github.com/Flogerbe/HelloCSEFlorian/pkg/validation"

const (
	MsgLoggedIn           = "Connexion réussie."
	MsgLoggedOut          = "Déconnexion réussie."
	MsgInvalidCredentials = "Identifiants incorrects."
)

var loginRules = validation.Set{
	{Name: "email", Rules: []validation.Rule{
		validation.Required("L'adresse e-mail est obligatoire."),
		validation.Email("L'adresse e-mail doit être une adresse valide."),
	}},
	{Name: "password", Rules: []validation.Rule{
		validation.Required("Le mot de passe est obligatoire."),
	}},
}

var userRules = validation.Set{
	{Name: "name", Rules: []validation.Rule{
		validation.Required("Le nom est obligatoire."),
		validation.MaxRunes(255, "Le nom ne doit pas dépasser 255 caractères."),
	}},
	{Name: "email", Rules: []validation.Rule{
		validation.Required("L'adresse e-mail est obligatoire."),
		validation.Email("L'adresse e-mail doit être une adresse valide."),
	}},
	{Name: "password", Rules: []validation.Rule{
		validation.Required("Le mot de passe est obligatoire."),
		maxBytes(72, "Le mot de passe ne doit pas dépasser 72 octets."),
	}},
}

// maxBytes bounds a string by its byte length, the unit bcrypt limits.
func maxBytes(n int, msg string) validation.Rule {
	return func(v validation.Value) string {
		if s, ok := v.String(); ok && len(s) > n {
			return msg
		}
		return ""
	}
}

// invalidCredentials is the single failure reported for an unknown email
// and a wrong password alike.
func invalidCredentials() validation.Errors {
	return validation.Errors{"email": {MsgInvalidCredentials}}
}
