package pricing

import "errors"

var errMissingQty = errors.New("quantity is missing")
