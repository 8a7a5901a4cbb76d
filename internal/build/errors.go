package build

import "errors"

// ErrCollectionsNotBuilt indicates a write stage ran before both collections were built.
var ErrCollectionsNotBuilt = errors.New("collections have not been built")
