package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/EduardoLubo/materiales-api/internal/application/dto"
	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
)

// Normalize convierte el request crudo en un pedido normalizado listo para
// validar. Sin efectos colaterales:
//   - descarta líneas sin material o con cantidad no positiva (también las
//     que quedan en cero tras el redondeo)
//   - agrupa las líneas a granel por material sumando cantidades (redondeo a
//     2 decimales, no truncado)
//   - conserva cada línea serializada por separado con cantidad implícita 1
//   - canonicaliza series (NFC + mayúsculas) e identificadores (vacío = no provisto)
func Normalize(in dto.CreateMovementRequest, clientID, userID int64) movement.Request {
	req := movement.Request{
		Description:           strings.TrimSpace(in.Description),
		ReservationTag:        strings.TrimSpace(in.ReservationTag),
		TypeLabel:             strings.TrimSpace(in.Type),
		OriginLocationID:      in.OriginLocationID.Ptr(),
		DestinationLocationID: in.DestinationLocationID.Ptr(),
		OriginCrewID:          in.OriginCrewID.Ptr(),
		DestinationCrewID:     in.DestinationCrewID.Ptr(),
		ClientID:              clientID,
		UserID:                userID,
	}

	bulk := make(map[int64]decimal.Decimal)
	bulkOrder := make([]int64, 0, len(in.Lines))
	var serialized []movement.Line

	for _, l := range in.Lines {
		if !l.MaterialID.Valid || !l.Quantity.IsPositive() {
			continue
		}
		serial := CanonicalSerial(l.SerialCode)
		if serial != "" {
			// Unidad física individual: nunca se fusiona y la cantidad es 1.
			serialized = append(serialized, movement.Line{
				MaterialID: l.MaterialID.Value,
				SerialCode: serial,
				Quantity:   decimal.NewFromInt(1),
			})
			continue
		}
		if _, seen := bulk[l.MaterialID.Value]; !seen {
			bulkOrder = append(bulkOrder, l.MaterialID.Value)
		}
		bulk[l.MaterialID.Value] = bulk[l.MaterialID.Value].Add(l.Quantity)
	}

	// Orden determinístico por material: estabiliza la salida y el orden en
	// que el commit toma los locks de stock.
	sort.Slice(bulkOrder, func(i, j int) bool { return bulkOrder[i] < bulkOrder[j] })

	lines := make([]movement.Line, 0, len(bulkOrder)+len(serialized))
	for _, materialID := range bulkOrder {
		qty := bulk[materialID].Round(2)
		// Una suma positiva puede quedar en cero tras el redondeo; esa línea
		// tampoco entra al ledger.
		if !qty.IsPositive() {
			continue
		}
		lines = append(lines, movement.Line{
			MaterialID: materialID,
			Quantity:   qty,
		})
	}
	lines = append(lines, serialized...)
	req.Lines = lines
	return req
}

// CanonicalSerial normaliza un código de serie: espacios fuera, Unicode NFC y
// mayúsculas, para que la unicidad por material+cliente no dependa de cómo se
// tipeó la serie.
func CanonicalSerial(s string) string {
	return strings.ToUpper(norm.NFC.String(strings.TrimSpace(s)))
}
