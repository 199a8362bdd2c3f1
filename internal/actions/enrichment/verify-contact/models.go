package verifycontact

// Contact channel types with distinct prompt branches.
const (
	TypeEmail = "email"
	TypePhone = "phone"
)

type Input struct {
	Input string `json:"input"`
	Type  string `json:"type"`
}

// Output is the verification report: the schema-validated model document with
// the original input and type re-attached.
type Output map[string]interface{}
