package sales

import (
	"strconv"
	"strings"
	"time"

	"tienda-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Field-level messages stay in the processor's language; the dashboard shows
// them to users verbatim next to the row number.

var fallbackDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	// Date-typed spreadsheet cells arrive from the workbook reader already
	// rendered with the default short date style, month first.
	"01-02-06",
	"01-02-06 15:04",
}

// parseSaleDate reads slash dates day-first: "13/05/2024" is 13 May, and the
// ambiguous "05/03/2024" is 5 March. Existing imports depend on the
// day-first reading, so it is kept even where month-first would also be
// valid. Anything else falls back to a few unambiguous layouts.
func parseSaleDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) == 3 {
		day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 == nil && err2 == nil && err3 == nil {
			if day >= 1 && month >= 1 && year >= 1 && (day <= 12 || month <= 12) {
				return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
			}
			return time.Time{}, false
		}
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeDecimal accepts a comma decimal separator and returns the
// canonical numeric string.
func normalizeDecimal(s string) (string, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return "", false
	}
	return d.String(), true
}

// parseLeadingInt mimics a lenient parseInt: optional sign, then the digit
// prefix ("3 cuotas" reads as 3).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0, false
	}
	return n, true
}

// get returns the trimmed value of a field and whether it is non-empty.
func (d rowDraft) get(field string) (string, bool) {
	p := d[field]
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	return v, v != ""
}

func (d rowDraft) optString(field string) *string {
	if v, ok := d.get(field); ok {
		return &v
	}
	return nil
}

func (d rowDraft) optDecimal(field, label string, msgs *[]string) *string {
	v, ok := d.get(field)
	if !ok {
		return nil
	}
	n, ok := normalizeDecimal(v)
	if !ok {
		*msgs = append(*msgs, field+" - "+label+" debe ser un número válido")
		return nil
	}
	return &n
}

func (d rowDraft) required(field, requiredMsg, emptyMsg string, msgs *[]string) (string, bool) {
	if d[field] == nil {
		*msgs = append(*msgs, field+" - "+requiredMsg)
		return "", false
	}
	v, ok := d.get(field)
	if !ok {
		*msgs = append(*msgs, field+" - "+emptyMsg)
		return "", false
	}
	return v, true
}

// validateRow coerces one draft into a SaleRecord. It returns either the
// record or the full list of field violations; never both.
func validateRow(d rowDraft) (*models.SaleRecord, []string) {
	var msgs []string
	rec := &models.SaleRecord{}

	if v, ok := d.get("sale_date"); !ok {
		msgs = append(msgs, "sale_date - Fecha de venta es requerida")
	} else if t, ok := parseSaleDate(v); !ok {
		msgs = append(msgs, "sale_date - Fecha de venta es requerida")
	} else {
		rec.SaleDate = t
	}

	if v, ok := d.required("transaction_number", "Nro. transacción es requerido", "Nro. transacción no puede estar vacío", &msgs); ok {
		rec.TransactionNumber = v
	}

	if v, ok := d.required("currency", "Moneda es requerida", "Moneda no puede estar vacía", &msgs); ok {
		rec.Currency = v
	}

	if v, ok := d.get("gross_amount"); !ok {
		msgs = append(msgs, "gross_amount - Importe es requerido")
	} else if n, ok := normalizeDecimal(v); !ok {
		msgs = append(msgs, "gross_amount - Importe debe ser un número válido")
	} else {
		rec.GrossAmount = n
	}

	if v, ok := d.required("transaction_status", "Estado es requerido", "Estado no puede estar vacío", &msgs); ok {
		rec.TransactionStatus = v
	}

	if v, ok := d.get("installments"); ok {
		if n, ok := parseLeadingInt(v); ok {
			rec.Installments = &n
		} else {
			msgs = append(msgs, "installments - Cuotas debe ser un número entero")
		}
	}

	// An unparseable optional date is dropped rather than rejected; partial
	// exports carry placeholders like "-" here.
	if v, ok := d.get("settlement_date"); ok {
		if t, ok := parseSaleDate(v); ok {
			rec.SettlementDate = &t
		}
	}

	rec.NetAmount = d.optDecimal("net_amount", "Importe Neto", &msgs)
	rec.CommissionAmount = d.optDecimal("commission_amount", "Monto de comisión", &msgs)
	rec.IncomeTaxWithholding = d.optDecimal("income_tax_withholding", "Retención RENTA", &msgs)
	rec.VatWithholding = d.optDecimal("vat_withholding", "Retención IVA", &msgs)
	rec.PromoDiscount = d.optDecimal("promo_discount", "Descuento Promo", &msgs)
	rec.VatOnCommission = d.optDecimal("vat_on_commission", "IVA s/Comision", &msgs)
	rec.MerchantCommissionRate = d.optDecimal("merchant_commission_rate", "Porcentaje de comision al comercio", &msgs)

	rec.CardType = d.optString("card_type")
	rec.CardBrand = d.optString("card_brand")
	rec.PaymentPlan = d.optString("payment_plan")
	rec.BranchCode = d.optString("branch_code")
	rec.PaymentMethod = d.optString("payment_method")
	rec.AnnulmentDate = d.optString("annulment_date")
	rec.AuthorizationCode = d.optString("authorization_code")
	rec.IssuerName = d.optString("issuer_name")
	rec.CardNumberMasked = d.optString("card_number_masked")
	rec.CustomerGender = d.optString("customer_gender")
	rec.CustomerBirthDate = d.optString("customer_birth_date")
	rec.TransactionOrigin = d.optString("transaction_origin")
	rec.TransactionType = d.optString("transaction_type")
	rec.ProcessorName = d.optString("processor_name")
	rec.DeviceType = d.optString("device_type")
	rec.IataCode = d.optString("iata_code")
	rec.CardAffinity = d.optString("card_affinity")
	rec.StatementNumber = d.optString("statement_number")
	rec.DepositAccountCode = d.optString("deposit_account_code")
	rec.BankAccountNumber = d.optString("bank_account_number")
	rec.PromotionDate = d.optString("promotion_date")
	rec.CashRegisterID = d.optString("cash_register_id")
	rec.TransactionService = d.optString("transaction_service")
	rec.ServiceDescription = d.optString("service_description")
	rec.ServiceCode = d.optString("service_code")
	rec.ServiceCodeDescription = d.optString("service_code_description")
	rec.AdditionalData = d.optString("additional_data")
	rec.PreAuthorizationSlip = d.optString("pre_authorization_slip")

	if len(msgs) > 0 {
		return nil, msgs
	}
	return rec, nil
}
