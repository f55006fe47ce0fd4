package entity

// RoleCrewLead rol del responsable único de la cuadrilla.
const RoleCrewLead = "JEFE DE CUADRILLA"

// CrewMember integrante del plantel de una cuadrilla.
type CrewMember struct {
	PersonID int64
	Name     string
	Role     string
}

// Crew cuadrilla de trabajo. El plantel tiene exactamente un JEFE DE CUADRILLA
// y sin personas repetidas; ese invariante lo hace cumplir el colaborador que
// crea cuadrillas (ver ledger.ValidateRoster) y el motor lo asume cumplido.
type Crew struct {
	ID       int64
	Code     string
	ClientID int64
	Roster   []CrewMember
}
