package domain

import "strings"

// MediaConsumption agrupa preferencias de consumo cultural.
type MediaConsumption struct {
	Literature string `json:"literature,omitempty"`
	Film       string `json:"film,omitempty"`
	Gaming     string `json:"gaming,omitempty"`
	Music      string `json:"music,omitempty"`
}

// LifestyleData agrupa las dimensiones 2-8 del perfil. Todo es opcional:
// un campo vacio significa "desconocido" y nunca penaliza un match.
type LifestyleData struct {
	// Vida diaria
	Housing          string   `json:"housing,omitempty"`
	Career           string   `json:"career,omitempty"`
	WorkHours        string   `json:"workHours,omitempty"`
	DailyRhythm      string   `json:"dailyRhythm,omitempty"`
	EnergyLevel      string   `json:"energyLevel,omitempty"`
	Diet             string   `json:"diet,omitempty"`
	Fitness          string   `json:"fitness,omitempty"`
	BodyRelationship string   `json:"bodyRelationship,omitempty"`
	Smoking          string   `json:"smoking,omitempty"`
	Alcohol          string   `json:"alcohol,omitempty"`
	Drugs            []string `json:"drugs,omitempty"`

	// Intelecto
	Education             string            `json:"education,omitempty"`
	IntellectualInterests []string          `json:"intellectualInterests,omitempty"`
	MediaConsumption      *MediaConsumption `json:"mediaConsumption,omitempty"`
	Creativity            []string          `json:"creativity,omitempty"`

	// Comportamiento social
	CommunicationStyle string `json:"communicationStyle,omitempty"`
	Texting            string `json:"texting,omitempty"`
	ConflictBehavior   string `json:"conflictBehavior,omitempty"`
	FriendCircle       string `json:"friendCircle,omitempty"`
	FamilyRelationship string `json:"familyRelationship,omitempty"`

	// Valores
	Politics     string `json:"politics,omitempty"`
	Spirituality string `json:"spirituality,omitempty"`
	Environment  string `json:"environment,omitempty"`
	WantChildren string `json:"wantChildren,omitempty"`

	// Filosofia de pareja
	RelationshipStructure string `json:"relationshipStructure,omitempty"`
	Commitment            string `json:"commitment,omitempty"`
	Romance               string `json:"romance,omitempty"`
	Jealousy              string `json:"jealousy,omitempty"`

	// Estetica. BodyModifications no usa omitempty: una lista vacia ([])
	// es una respuesta explicita, distinta de no haber respondido (null).
	FashionStyle      string   `json:"fashionStyle,omitempty"`
	BodyModifications []string `json:"bodyModifications"`
	HairStyle         string   `json:"hairStyle,omitempty"`
	Beard             string   `json:"beard,omitempty"`

	// Practico
	OutStatus    string `json:"outStatus,omitempty"`
	Mobility     string `json:"mobility,omitempty"`
	Availability string `json:"availability,omitempty"`
}

// Field devuelve el valor de un campo escalar por su nombre JSON.
// Campos desconocidos o de tipo lista devuelven "".
func (l LifestyleData) Field(name string) string {
	var v string
	switch name {
	case "housing":
		v = l.Housing
	case "career":
		v = l.Career
	case "workHours":
		v = l.WorkHours
	case "dailyRhythm":
		v = l.DailyRhythm
	case "energyLevel":
		v = l.EnergyLevel
	case "diet":
		v = l.Diet
	case "fitness":
		v = l.Fitness
	case "bodyRelationship":
		v = l.BodyRelationship
	case "smoking":
		v = l.Smoking
	case "alcohol":
		v = l.Alcohol
	case "education":
		v = l.Education
	case "communicationStyle":
		v = l.CommunicationStyle
	case "texting":
		v = l.Texting
	case "conflictBehavior":
		v = l.ConflictBehavior
	case "friendCircle":
		v = l.FriendCircle
	case "familyRelationship":
		v = l.FamilyRelationship
	case "politics":
		v = l.Politics
	case "spirituality":
		v = l.Spirituality
	case "environment":
		v = l.Environment
	case "wantChildren":
		v = l.WantChildren
	case "relationshipStructure":
		v = l.RelationshipStructure
	case "commitment":
		v = l.Commitment
	case "romance":
		v = l.Romance
	case "jealousy":
		v = l.Jealousy
	case "fashionStyle":
		v = l.FashionStyle
	case "hairStyle":
		v = l.HairStyle
	case "beard":
		v = l.Beard
	case "outStatus":
		v = l.OutStatus
	case "mobility":
		v = l.Mobility
	case "availability":
		v = l.Availability
	}
	return strings.TrimSpace(v)
}
