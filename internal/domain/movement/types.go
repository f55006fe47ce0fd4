package movement

import "fmt"

// LocationKind clase de ubicación. Para el motor las ubicaciones son opacas:
// solo importa su clase al evaluar la topología del tipo de movimiento.
type LocationKind string

const (
	KindDeposito  LocationKind = "DEPOSITO"
	KindObra      LocationKind = "OBRA"
	KindProveedor LocationKind = "PROVEEDOR"
)

// Type tipo de movimiento (enumeración cerrada). El texto externo se parsea
// una sola vez en el borde con ParseType; adentro todo el despacho es por enum.
type Type int

const (
	TypeIngresoProveedor Type = iota + 1 // PROVEEDOR -> DEPOSITO
	TypeEnvioAObra                       // DEPOSITO  -> OBRA (cuadrilla destino)
	TypeDevolucionDeObra                 // OBRA      -> DEPOSITO (cuadrilla origen)
	TypeConsumoEnObra                    // OBRA      -> sin destino (cuadrilla origen)
	TypeTransferenciaDepositos           // DEPOSITO  -> DEPOSITO
	TypeTransferenciaCuadrillas          // OBRA      -> OBRA (ambas cuadrillas)
	TypeDevolucionAProveedor             // DEPOSITO  -> PROVEEDOR
	TypeBajaMaterial                     // DEPOSITO  -> sin destino
)

var typeLabels = map[Type]string{
	TypeIngresoProveedor:        "INGRESO_PROVEEDOR",
	TypeEnvioAObra:              "ENVIO_A_OBRA",
	TypeDevolucionDeObra:        "DEVOLUCION_DE_OBRA",
	TypeConsumoEnObra:           "CONSUMO_EN_OBRA",
	TypeTransferenciaDepositos:  "TRANSFERENCIA_DEPOSITOS",
	TypeTransferenciaCuadrillas: "TRANSFERENCIA_CUADRILLAS",
	TypeDevolucionAProveedor:    "DEVOLUCION_A_PROVEEDOR",
	TypeBajaMaterial:            "BAJA_MATERIAL",
}

var labelTypes = func() map[string]Type {
	m := make(map[string]Type, len(typeLabels))
	for t, l := range typeLabels {
		m[l] = t
	}
	return m
}()

// String devuelve la etiqueta estable del tipo (la que viaja por la API y se persiste).
func (t Type) String() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid indica si el valor pertenece a la enumeración.
func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// ParseType convierte la etiqueta externa en el enum. Única puerta de entrada
// de texto libre: adentro del motor un tipo desconocido no puede existir.
func ParseType(label string) (Type, bool) {
	t, ok := labelTypes[label]
	return t, ok
}

// AllTypes devuelve los tipos en orden estable (para exponer la tabla de reglas).
func AllTypes() []Type {
	return []Type{
		TypeIngresoProveedor,
		TypeEnvioAObra,
		TypeDevolucionDeObra,
		TypeConsumoEnObra,
		TypeTransferenciaDepositos,
		TypeTransferenciaCuadrillas,
		TypeDevolucionAProveedor,
		TypeBajaMaterial,
	}
}

// UnitState estado de ciclo de vida de una unidad serializada.
type UnitState string

const (
	StateDisponible UnitState = "DISPONIBLE" // en depósito, libre
	StateAsignado   UnitState = "ASIGNADO"   // en obra, asignada a una cuadrilla
	StateInstalado  UnitState = "INSTALADO"  // consumida/instalada en obra
	StateBaja       UnitState = "BAJA"       // fuera de custodia; estado terminal
)
