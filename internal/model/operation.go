package model

type Endpoint struct {
	Method      Method
	Name        string // declared operation name
	Path        string
	Parameters  []Parameter
	Responses   []Response
	Summary     string
	Description string
	ReturnType  string // e.g. "User" or "List[User]"
}

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodPatch   Method = "PATCH"
)

// Methods lists the recognized verbs in lookup order.
var Methods = []Method{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodHead,
	MethodOptions,
	MethodPatch,
}

type ParameterKind string

const (
	KindPath   ParameterKind = "path"
	KindQuery  ParameterKind = "query"
	KindHeader ParameterKind = "header"
	KindForm   ParameterKind = "form"
	KindBody   ParameterKind = "body"
)

type Parameter struct {
	Kind        ParameterKind
	Name        string
	Description string
	Type        string
}

type Response struct {
	Code    int
	Message string
}
