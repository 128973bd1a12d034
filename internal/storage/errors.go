package storage

import "errors"

// ErrIDExhausted возвращается, когда счётчик идентификаторов достиг максимума.
var ErrIDExhausted = errors.New("identifier space exhausted")
