package typechecker

// pushReturnType records the current function's expected return type.
func (c *Checker) pushReturnType(typ Type) {
	c.returnTypeStack = append(c.returnTypeStack, typ)
}

// popReturnType restores the previous expected return type.
func (c *Checker) popReturnType() {
	if len(c.returnTypeStack) == 0 {
		return
	}
	c.returnTypeStack = c.returnTypeStack[:len(c.returnTypeStack)-1]
}

// currentReturnType returns the innermost expected return type. It reports
// false at the top level.
func (c *Checker) currentReturnType() (Type, bool) {
	if len(c.returnTypeStack) == 0 {
		return nil, false
	}
	return c.returnTypeStack[len(c.returnTypeStack)-1], true
}
