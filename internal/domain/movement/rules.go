package movement

// Rule topología exigida por un tipo de movimiento: clase de origen y destino
// y qué cuadrillas son obligatorias. La tabla es exhaustiva y fija; agregar un
// tipo de movimiento es agregar una entrada (y el compilador obliga a cubrir
// el enum en NextProjection).
type Rule struct {
	Origin           LocationKind
	Destination      LocationKind // vacío si HasDestination es false
	HasDestination   bool
	RequiresOriginCrew      bool
	RequiresDestinationCrew bool
}

var rules = map[Type]Rule{
	TypeIngresoProveedor: {
		Origin: KindProveedor, Destination: KindDeposito, HasDestination: true,
	},
	TypeEnvioAObra: {
		Origin: KindDeposito, Destination: KindObra, HasDestination: true,
		RequiresDestinationCrew: true,
	},
	TypeDevolucionDeObra: {
		Origin: KindObra, Destination: KindDeposito, HasDestination: true,
		RequiresOriginCrew: true,
	},
	TypeConsumoEnObra: {
		Origin: KindObra,
		RequiresOriginCrew: true,
	},
	TypeTransferenciaDepositos: {
		Origin: KindDeposito, Destination: KindDeposito, HasDestination: true,
	},
	TypeTransferenciaCuadrillas: {
		Origin: KindObra, Destination: KindObra, HasDestination: true,
		RequiresOriginCrew: true, RequiresDestinationCrew: true,
	},
	TypeDevolucionAProveedor: {
		Origin: KindDeposito, Destination: KindProveedor, HasDestination: true,
	},
	TypeBajaMaterial: {
		Origin: KindDeposito,
	},
}

// RuleFor devuelve la regla topológica del tipo. ok es false para valores
// fuera de la enumeración.
func RuleFor(t Type) (Rule, bool) {
	r, ok := rules[t]
	return r, ok
}

// EffectKind efecto de una línea sobre el stock derivado de una punta del
// movimiento. Una punta PROVEEDOR es externa al inventario y no genera efecto.
type EffectKind int

const (
	NoEffect EffectKind = iota
	Debit               // resta en la tupla de origen
	Credit              // suma en la tupla de destino
)

// Effects deriva de la regla el efecto contable de cada punta. Compartido por
// el camino de escritura (mantener el stock materializado) y el de lectura
// (plegar el ledger), para no duplicar la topología.
func (r Rule) Effects() (origin, destination EffectKind) {
	origin = NoEffect
	if r.Origin != KindProveedor {
		origin = Debit
	}
	destination = NoEffect
	if r.HasDestination && r.Destination != KindProveedor {
		destination = Credit
	}
	return origin, destination
}
