package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRecord is one settled card transaction from a processor export.
// Monetary fields are canonical decimal strings (comma separators already
// normalised by the importer). Only five fields are mandatory; the processor
// omits most columns depending on the export profile, so everything else is
// nullable.
type SaleRecord struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	SaleDate          time.Time `gorm:"not null;index" json:"sale_date"`
	TransactionNumber string    `gorm:"size:100;not null" json:"transaction_number"`
	Currency          string    `gorm:"size:20;not null" json:"currency"`
	GrossAmount       string    `gorm:"type:numeric;not null" json:"gross_amount"`
	TransactionStatus string    `gorm:"size:50;not null" json:"transaction_status"`

	CardType             *string    `gorm:"size:50" json:"card_type"`
	CardBrand            *string    `gorm:"size:50" json:"card_brand"`
	Installments         *int       `json:"installments"`
	PaymentPlan          *string    `gorm:"size:100" json:"payment_plan"`
	BranchCode           *string    `gorm:"size:50" json:"branch_code"`
	NetAmount            *string    `gorm:"type:numeric" json:"net_amount"`
	CommissionAmount     *string    `gorm:"type:numeric" json:"commission_amount"`
	IncomeTaxWithholding *string    `gorm:"type:numeric" json:"income_tax_withholding"`
	VatWithholding       *string    `gorm:"type:numeric" json:"vat_withholding"`
	SettlementDate       *time.Time `json:"settlement_date"`
	PromoDiscount        *string    `gorm:"type:numeric" json:"promo_discount"`
	PaymentMethod        *string    `gorm:"size:100" json:"payment_method"`

	AnnulmentDate          *string `gorm:"size:50" json:"annulment_date"`
	AuthorizationCode      *string `gorm:"size:50" json:"authorization_code"`
	IssuerName             *string `gorm:"size:100" json:"issuer_name"`
	CardNumberMasked       *string `gorm:"size:50" json:"card_number_masked"`
	CustomerGender         *string `gorm:"size:20" json:"customer_gender"`
	CustomerBirthDate      *string `gorm:"size:50" json:"customer_birth_date"`
	TransactionOrigin      *string `gorm:"size:100" json:"transaction_origin"`
	TransactionType        *string `gorm:"size:100" json:"transaction_type"`
	ProcessorName          *string `gorm:"size:100" json:"processor_name"`
	DeviceType             *string `gorm:"size:100" json:"device_type"`
	IataCode               *string `gorm:"size:50" json:"iata_code"`
	CardAffinity           *string `gorm:"size:100" json:"card_affinity"`
	StatementNumber        *string `gorm:"size:50" json:"statement_number"`
	VatOnCommission        *string `gorm:"type:numeric" json:"vat_on_commission"`
	DepositAccountCode     *string `gorm:"size:100" json:"deposit_account_code"`
	BankAccountNumber      *string `gorm:"size:100" json:"bank_account_number"`
	MerchantCommissionRate *string `gorm:"type:numeric" json:"merchant_commission_rate"`
	PromotionDate          *string `gorm:"size:50" json:"promotion_date"`
	CashRegisterID         *string `gorm:"size:50" json:"cash_register_id"`
	TransactionService     *string `gorm:"size:100" json:"transaction_service"`
	ServiceDescription     *string `gorm:"size:255" json:"service_description"`
	ServiceCode            *string `gorm:"size:100" json:"service_code"`
	ServiceCodeDescription *string `gorm:"size:255" json:"service_code_description"`
	AdditionalData         *string `gorm:"size:255" json:"additional_data"`
	PreAuthorizationSlip   *string `gorm:"size:100" json:"pre_authorization_slip"`

	StoreID   string    `gorm:"type:uuid;not null;index" json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *SaleRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
