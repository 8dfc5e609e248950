package prompt

import "errors"

// ErrAborted is returned when the user interrupts an interactive walk.
var ErrAborted = errors.New("prompt: aborted by user")
