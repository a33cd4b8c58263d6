package profiles

import "github.com/Flogerbe/HelloCSEFlorian/pkg/openapi"

type spec struct {
	ListPublic *openapi.Operation
	ListAdmin  *openapi.Operation
	Create     *openapi.Operation
	Update     *openapi.Operation
	Delete     *openapi.Operation
}

var Spec = spec{
	ListPublic: &openapi.Operation{
		Summary:     "List active profiles",
		Description: "Profiles with statut actif, oldest first. The statut field is never included.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Active profiles", "PublicProfileList"),
		},
	},
	ListAdmin: &openapi.Operation{
		Summary:     "List all profiles",
		Description: "Every profile with every field, oldest first.",
		Security:    openapi.Secured(),
		Parameters: []*openapi.Parameter{
			{Name: "statut", In: "query", Description: "Only profiles with this statut", Schema: &openapi.Schema{Type: "string", Enum: statutNames()}},
			openapi.QueryParam("search", "string", "Case-insensitive match on nom or prenom", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("All profiles", "ProfileList"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create profile",
		Description: "Send multipart/form-data to include an image. statut defaults to en_attente.",
		Security:    openapi.Secured(),
		RequestBody: openapi.RequestBodyForm("ProfileInput", "ProfileForm", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Profile created", "ProfileResponse"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			422: openapi.ResponseRef("ValidationError"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update profile",
		Description: "Only supplied fields change. A null image removes the current image.",
		Security:    openapi.Secured(),
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Profile ID"),
		},
		RequestBody: openapi.RequestBodyForm("ProfileInput", "ProfileForm", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Profile updated", "ProfileResponse"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("ValidationError"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete profile",
		Description: "Removes the profile and its image.",
		Security:    openapi.Secured(),
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Profile ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Profile deleted", "Message"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	publicProps := map[string]*openapi.Schema{
		"id":         {Type: "string", Format: "uuid"},
		"nom":        {Type: "string", MaxLength: maxNameRunes},
		"prenom":     {Type: "string", MaxLength: maxNameRunes},
		"image":      {Type: []string{"string", "null"}, Description: "Storage key, served under /storage/"},
		"created_at": {Type: "string", Format: "date-time"},
		"updated_at": {Type: "string", Format: "date-time"},
	}

	adminProps := make(map[string]*openapi.Schema, len(publicProps)+1)
	for k, v := range publicProps {
		adminProps[k] = v
	}
	adminProps["statut"] = &openapi.Schema{Type: "string", Enum: statutNames()}

	return map[string]*openapi.Schema{
		"PublicProfile": {
			Type:       "object",
			Properties: publicProps,
			Required:   []string{"id", "nom", "prenom", "image", "created_at", "updated_at"},
		},
		"Profile": {
			Type:       "object",
			Properties: adminProps,
			Required:   []string{"id", "nom", "prenom", "image", "statut", "created_at", "updated_at"},
		},
		"PublicProfileList": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"data": openapi.ArrayOf("PublicProfile")},
			Required:   []string{"data"},
		},
		"ProfileList": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"data": openapi.ArrayOf("Profile")},
			Required:   []string{"data"},
		},
		"ProfileResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message": {Type: "string"},
				"data":    openapi.SchemaRef("Profile"),
			},
			Required: []string{"message", "data"},
		},
		"ProfileInput": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"nom":    {Type: "string", MaxLength: maxNameRunes, Example: "Dupont"},
				"prenom": {Type: "string", MaxLength: maxNameRunes, Example: "Jean"},
				"statut": {Type: []string{"string", "null"}, Enum: statutNames()},
				"image":  {Type: "null", Description: "Only null, to remove the image"},
			},
		},
		"ProfileForm": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"nom":    {Type: "string", MaxLength: maxNameRunes},
				"prenom": {Type: "string", MaxLength: maxNameRunes},
				"statut": {Type: "string", Enum: statutNames()},
				"image":  {Type: "string", Format: "binary", Description: "jpg, jpeg, png or webp"},
			},
		},
	}
}
