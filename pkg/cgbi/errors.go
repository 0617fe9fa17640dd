package cgbi

// A FormatError reports that the input is not a valid PNG stream.
type FormatError string

func (e FormatError) Error() string { return "cgbi: invalid format: " + string(e) }

// An UnexpectedError reports input that frames correctly but violates the
// geometry the converter relies on.
type UnexpectedError string

func (e UnexpectedError) Error() string { return "cgbi: unexpected error: " + string(e) }
