package domain

// Catalog type codes as stored in sys.objects.type (trimmed).
const (
	TypeCodeTable             = "U"
	TypeCodeProcedure         = "P"
	TypeCodeCLRProcedure      = "PC"
	TypeCodeView              = "V"
	TypeCodeScalarFunction    = "FN"
	TypeCodeInlineFunction    = "IF"
	TypeCodeTableFunction     = "TF"
	TypeCodeCLRScalarFunction = "FS"
	TypeCodeCLRTableFunction  = "FT"
	TypeCodeTrigger           = "TR"
	TypeCodeCLRTrigger        = "TA"
	TypeCodePrimaryKey        = "PK"
	TypeCodeForeignKey        = "F"
	TypeCodeUnique            = "UQ"
	TypeCodeDefault           = "D"
	TypeCodeCheck             = "C"
)

var typeCodeTable = map[string]ObjectType{
	TypeCodeTable:             ObjectTable,
	TypeCodeProcedure:         ObjectProcedure,
	TypeCodeCLRProcedure:      ObjectProcedure,
	TypeCodeView:              ObjectView,
	TypeCodeScalarFunction:    ObjectFunction,
	TypeCodeInlineFunction:    ObjectFunction,
	TypeCodeTableFunction:     ObjectFunction,
	TypeCodeCLRScalarFunction: ObjectFunction,
	TypeCodeCLRTableFunction:  ObjectFunction,
	TypeCodeTrigger:           ObjectTrigger,
	TypeCodeCLRTrigger:        ObjectTrigger,
	TypeCodePrimaryKey:        ObjectConstraint,
	TypeCodeForeignKey:        ObjectConstraint,
	TypeCodeUnique:            ObjectConstraint,
	TypeCodeDefault:           ObjectConstraint,
	TypeCodeCheck:             ObjectConstraint,
}

// ObjectTypeForCode maps a catalog type code to its ObjectType.
func ObjectTypeForCode(code string) (ObjectType, bool) {
	t, ok := typeCodeTable[code]
	return t, ok
}

// TypeCodes returns every mapped catalog type code in a fixed order.
func TypeCodes() []string {
	return []string{
		TypeCodeTable, TypeCodePrimaryKey, TypeCodeForeignKey, TypeCodeUnique, TypeCodeDefault,
		TypeCodeTrigger, TypeCodeCLRTrigger, TypeCodeCheck, TypeCodeProcedure, TypeCodeCLRProcedure,
		TypeCodeView, TypeCodeScalarFunction, TypeCodeInlineFunction, TypeCodeTableFunction,
		TypeCodeCLRScalarFunction, TypeCodeCLRTableFunction,
	}
}

// EnumerationGroup is the presentation group used to order listed objects:
// tables, primary keys, foreign keys, unique constraints, defaults, triggers, then the rest.
func EnumerationGroup(code string) int {
	switch code {
	case TypeCodeTable:
		return 0
	case TypeCodePrimaryKey:
		return 1
	case TypeCodeForeignKey:
		return 2
	case TypeCodeUnique:
		return 3
	case TypeCodeDefault:
		return 4
	case TypeCodeTrigger, TypeCodeCLRTrigger:
		return 5
	default:
		return 6
	}
}
