package routebind

// Route supplies the captured parameters of a matched route together with
// its binding configuration.
type Route interface {
	Parameters() *Parameters
	EnforcesScopedBindings() bool
	AllowsTrashedBindings() bool
	// BindingFieldFor returns the field the named parameter binds by, or ""
	// when the lookup type decides.
	BindingFieldFor(name string) string
}
