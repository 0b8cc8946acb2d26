package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// Clientes y proveedores comparten forma (nombre, teléfono, email, dirección
// opcional); las consultas de vista y el patch se arman una sola vez.

// contactViewQuery SELECT de contacto con la cadena dirección → ciudad → estado
// resuelta por LEFT JOIN. Los filtros y el ORDER BY los agrega el caller.
func contactViewQuery(table string) string {
	return `
		SELECT t.id, t.name, t.phone, t.email, t.address_id, t.created_at, t.updated_at,
			a.id, a.street, a.number, a.district, a.zip_code, a.city_id,
			ci.name, s.name, s.code
		FROM ` + table + ` t
		LEFT JOIN addresses a ON a.id = t.address_id
		LEFT JOIN cities ci ON ci.id = a.city_id
		LEFT JOIN states s ON s.id = ci.state_id`
}

// scanContactRow escanea una fila de contactViewQuery: los destinos base del
// contacto los pasa el caller, las columnas de dirección (anulables) se
// resuelven acá. Devuelve nil si el contacto no tiene dirección.
func scanContactRow(rows pgx.Rows, dest ...any) (*entity.AddressView, error) {
	var (
		addrID, street, number, district, zipCode, cityID *string
		cityName, stateName, stateCode                    *string
	)
	dest = append(dest,
		&addrID, &street, &number, &district, &zipCode, &cityID,
		&cityName, &stateName, &stateCode,
	)
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	if addrID == nil {
		return nil, nil
	}
	return &entity.AddressView{
		Address: entity.Address{
			ID:       *addrID,
			Street:   *street,
			Number:   *number,
			District: *district,
			ZipCode:  *zipCode,
			CityID:   *cityID,
		},
		CityName:  *cityName,
		StateName: *stateName,
		StateCode: *stateCode,
	}, nil
}

// buildContactPatch traduce un ContactPatch a la cláusula SET.
func buildContactPatch(patch repository.ContactPatch) (string, []any) {
	var fields []patchField
	if patch.Name != nil {
		fields = append(fields, patchField{"name", *patch.Name})
	}
	if patch.Phone != nil {
		fields = append(fields, patchField{"phone", *patch.Phone})
	}
	if patch.Email != nil {
		fields = append(fields, patchField{"email", *patch.Email})
	}
	if patch.AddressID != nil {
		fields = append(fields, patchField{"address_id", *patch.AddressID})
	}
	return buildPatch(fields)
}
