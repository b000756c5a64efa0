package sales

import "strings"

// Canonical field names for an imported sale row. The validator walks this
// list, so every field must be present in a draft even when the export did
// not carry the column.
var canonicalFields = []string{
	"sale_date",
	"transaction_number",
	"currency",
	"gross_amount",
	"transaction_status",
	"card_type",
	"card_brand",
	"installments",
	"payment_plan",
	"branch_code",
	"net_amount",
	"commission_amount",
	"income_tax_withholding",
	"vat_withholding",
	"settlement_date",
	"promo_discount",
	"payment_method",
	"annulment_date",
	"authorization_code",
	"issuer_name",
	"card_number_masked",
	"customer_gender",
	"customer_birth_date",
	"transaction_origin",
	"transaction_type",
	"processor_name",
	"device_type",
	"iata_code",
	"card_affinity",
	"statement_number",
	"vat_on_commission",
	"deposit_account_code",
	"bank_account_number",
	"merchant_commission_rate",
	"promotion_date",
	"cash_register_id",
	"transaction_service",
	"service_description",
	"service_code",
	"service_code_description",
	"additional_data",
	"pre_authorization_slip",
}

// headerMapping translates the card processor's export headers to canonical
// field names. Older exports drop the accents ("Nro. transaccion",
// "Codigo de Sucursal"), so both spellings are kept. Headers not in this
// table are dropped silently.
var headerMapping = map[string]string{
	"Fecha de venta":               "sale_date",
	"Nro. transacción":             "transaction_number",
	"Nro. transaccion":             "transaction_number",
	"Nro Transacción":              "transaction_number",
	"Moneda":                       "currency",
	"Importe":                      "gross_amount",
	"Estado":                       "transaction_status",
	"Tipo de tarjeta":              "card_type",
	"Marca":                        "card_brand",
	"Cuotas":                       "installments",
	"Plan de pago":                 "payment_plan",
	"Sucursal":                     "branch_code",
	"Sucursal o Código de Sucursal": "branch_code",
	"Código de Sucursal":           "branch_code",
	"Codigo de Sucursal":           "branch_code",
	"Importe Neto":                 "net_amount",
	"Monto de comisión":            "commission_amount",
	"Monto de comision":            "commission_amount",
	"Retención RENTA":              "income_tax_withholding",
	"Retención IVA":                "vat_withholding",
	"Fecha de crédito del comercio": "settlement_date",
	"Descuento Promo":              "promo_discount",
	"Medio de pago":                "payment_method",
	"Fecha de anulada":             "annulment_date",
	"Codigo autorizacion":          "authorization_code",
	"Emisor":                       "issuer_name",
	"Nro. tarjeta":                 "card_number_masked",
	"Sexo":                         "customer_gender",
	"Fecha de nacimiento":          "customer_birth_date",
	"Origen":                       "transaction_origin",
	"Tipo":                         "transaction_type",
	"Procesadora":                  "processor_name",
	"Dispositivo":                  "device_type",
	"Codigo Iata":                  "iata_code",
	"Afinidad":                     "card_affinity",
	"Nro. de resumen":              "statement_number",
	"IVA s/Comision":               "vat_on_commission",
	"Codigo de cuenta de la entidad de deposito": "deposit_account_code",
	"Nro. de cuenta del Banco":                   "bank_account_number",
	"Porcentaje de comision al comercio":         "merchant_commission_rate",
	"Fecha de la promocion":                      "promotion_date",
	"Caja":                                       "cash_register_id",
	"Servicio de Transacción":                    "transaction_service",
	"Descripción del servicio":                   "service_description",
	"Prestación":                                 "service_code",
	"Descripción de la prestación":               "service_code_description",
	"Datos Adicionales":                          "additional_data",
	"Boleta Preautorización":                     "pre_authorization_slip",
}

// rowDraft holds one remapped row. A nil entry means the column was absent
// from the file; the validator distinguishes that from an empty cell.
type rowDraft map[string]*string

// remapRow turns a header-keyed raw row into a draft keyed by canonical
// field names. The second return reports whether any recognised column held
// a non-blank value; rows where it is false are trailing blank lines and
// get skipped.
func remapRow(values map[string]string) (rowDraft, bool) {
	draft := make(rowDraft, len(canonicalFields))
	hasValue := false

	for rawHeader, rawValue := range values {
		field, ok := headerMapping[strings.TrimSpace(rawHeader)]
		if !ok {
			continue
		}
		v := rawValue
		draft[field] = &v
		if strings.TrimSpace(rawValue) != "" {
			hasValue = true
		}
	}

	for _, field := range canonicalFields {
		if _, ok := draft[field]; !ok {
			draft[field] = nil
		}
	}

	return draft, hasValue
}
