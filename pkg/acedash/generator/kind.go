package generator

import (
	"strconv"

	"github.com/ukaji3/acedash-go/pkg/acedash/validate"
)

// Kind identifies one of the dashboard charts.
type Kind int

const (
	Chart0  Kind = iota // total registrations
	Chart1              // registrant identity
	Chart2              // on-campus registrants
	Chart3              // teacher employment type
	Chart4              // full-time teacher ranks
	Chart5              // adjunct teacher ranks
	Chart6              // project teacher ranks
	Chart7              // clinical teacher ranks
	Chart8              // student levels
	Chart9              // teacher colleges
	Chart10             // student colleges
	Chart11             // teacher and student colleges

	kindCount
)

// Kinds returns every chart kind in order.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind maps a chart identifier ("chart0".."chart11") to its Kind.
func ParseKind(id string) (Kind, bool) {
	if !validate.IsValidChartID(id) {
		return 0, false
	}
	n, err := strconv.Atoi(id[len("chart"):])
	if err != nil {
		return 0, false
	}
	return Kind(n), true
}

// String returns the chart identifier.
func (k Kind) String() string {
	return "chart" + strconv.Itoa(int(k))
}

// Valid reports whether k names a catalogued chart.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}
