package datatype

// widenings lists the documented safe widenings: a value of the key kind can be
// compared under a type of the value kind without loss.
var widenings = map[Kind]Kind{
	KindInteger: KindDecimal,
	KindString:  KindClob,
	KindBinary:  KindBlob,
	KindDate:    KindTimestamp,
}

// Widens reports whether from can be safely widened to to.
func Widens(from, to Kind) bool {
	w, ok := widenings[from]
	return ok && w == to
}

// Common returns the type under which values of a and b can be compared.
// Types of the same kind share a domain; Unknown adopts the other side's type;
// otherwise only a documented widening makes the pair comparable.
func Common(a, b DataType) (DataType, bool) {
	switch {
	case a == nil || b == nil:
		return nil, false
	case a == b:
		return a, true
	case a.Kind() == KindUnknown:
		return b, true
	case b.Kind() == KindUnknown:
		return a, true
	case a.Kind() == b.Kind():
		return a, true
	case Widens(a.Kind(), b.Kind()):
		return b, true
	case Widens(b.Kind(), a.Kind()):
		return a, true
	}
	return nil, false
}

// CompareAcross compares a (typed by ta) with b (typed by tb). Pairs with no common
// type are Incomparable rather than an error.
func CompareAcross(ta DataType, a any, tb DataType, b any) (Result, error) {
	dt, ok := Common(ta, tb)
	if !ok {
		return Incomparable, nil
	}
	return dt.Compare(a, b)
}
