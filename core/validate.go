package core

type endpointFields struct {
	Method     string   `validate:"required,http_method"`
	BaseURL    string   `validate:"required,url"`
	QueryNames []string `validate:"unique,dive,required"`
	BodyNames  []string `validate:"unique,dive,required"`
}

// Validate checks the declaration of ep without building anything: the
// method must be a standard one, BaseURL an absolute URL, and parameter
// names unique within their kind. Unlike QueryParameters it never panics.
func Validate(ep Endpoint) error {
	fields := endpointFields{
		Method:  ep.Method().String(),
		BaseURL: ep.BaseURL(),
	}
	for _, p := range ep.Parameters() {
		if p.IsZero() {
			continue
		}
		switch p.Kind() {
		case Query:
			fields.QueryNames = append(fields.QueryNames, p.Name())
		case Body:
			fields.BodyNames = append(fields.BodyNames, p.Name())
		}
	}
	if err := validate.Struct(fields); err != nil {
		return &ValidationError{Subject: "endpoint " + fields.Method + " " + ep.Path(), Err: err}
	}
	return nil
}
