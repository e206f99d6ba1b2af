package domain

type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentPayPal PaymentMethod = "paypal"
	PaymentCash   PaymentMethod = "cash"
	PaymentCrypto PaymentMethod = "crypto"
)

var paymentLabels = map[PaymentMethod]string{
	PaymentCredit: "Credit Card",
	PaymentPayPal: "PayPal",
	PaymentCash:   "Cash on Delivery",
	PaymentCrypto: "Crypto",
}

// PaymentMethods lists the supported methods in display order. The set
// is fixed at compile time.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCredit, PaymentPayPal, PaymentCash, PaymentCrypto}
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentLabels[m]
	return ok
}

func (m PaymentMethod) Label() string {
	return paymentLabels[m]
}
