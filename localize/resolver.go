package localize

// Resolver binds a language to the resolution functions so render code can
// receive it as a value instead of reading global state.
type Resolver struct {
	Lang Language
}

// NewResolver returns a Resolver for lang, substituting English for
// unsupported values.
func NewResolver(lang Language) Resolver {
	if !lang.Valid() {
		lang = Default
	}
	return Resolver{Lang: lang}
}

func (r Resolver) Field(rec Record, field string) string {
	return ResolveField(rec, field, r.Lang)
}

func (r Resolver) Ingredient(ingredient any) string {
	return ResolveIngredient(ingredient, r.Lang)
}

func (r Resolver) Modifier(modifier Record) string {
	return ResolveModifierTranslation(modifier, r.Lang)
}

func (r Resolver) Value(v any) string {
	return ResolveValue(v, r.Lang)
}
