package value

func andBool(a, b bool) bool { return a && b }
func orBool(a, b bool) bool  { return a || b }

// And computes the logical AND of two Boolean values, element-wise.
func And(l, r Value) (Value, error) { return broadcastBool(l, r, andBool) }

// Or computes the logical OR of two Boolean values, element-wise.
func Or(l, r Value) (Value, error) { return broadcastBool(l, r, orBool) }
