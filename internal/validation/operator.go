package validation

import "strings"

// allowedOperators, WhereCompare ile kullanılabilecek operatörlerin beyaz listesidir.
// BETWEEN iki değer gerektirdiği için listede yoktur; ham Where ile yazılmalıdır.
var allowedOperators = map[string]bool{
	// Karşılaştırma operatörleri
	"=":   true,
	"!=":  true,
	"<>":  true,
	"<":   true,
	">":   true,
	"<=":  true,
	">=":  true,
	"<=>": true, // MySQL NULL güvenli eşitliği

	// Desen eşleştirme operatörleri
	"LIKE":     true,
	"NOT LIKE": true,

	// NULL kontrolü operatörleri
	"IS":     true,
	"IS NOT": true,

	// Liste operatörleri; değer bir slice olmalıdır
	"IN":     true,
	"NOT IN": true,
}

// NormalizeOperator, bir operatörü büyük harfe çevirip fazla boşlukları temizler.
// Beyaz listede olmayan operatörler için *OperatorError döner.
func NormalizeOperator(op string) (string, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(op), " "))

	if !allowedOperators[normalized] {
		return "", &OperatorError{
			Operator: op,
			Reason:   "operator not in allowed list",
		}
	}

	return normalized, nil
}

// IsListOperator, operatörün IN / NOT IN olup olmadığını döndürür.
func IsListOperator(op string) bool {
	return op == "IN" || op == "NOT IN"
}

// IsNullOperator, operatörün NULL kontrolü (IS / IS NOT) olup olmadığını döndürür.
func IsNullOperator(op string) bool {
	return op == "IS" || op == "IS NOT"
}

// OperatorError, operatör doğrulama hatasını temsil eder.
type OperatorError struct {
	Operator string
	Reason   string
}

// Error, error arayüzünü uygular ve hatayı açıklayıcı string olarak döner.
func (e *OperatorError) Error() string {
	return "fluentdb: invalid operator '" + e.Operator + "': " + e.Reason
}
