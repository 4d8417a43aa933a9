package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("BRIGHTCART_TEST_MODE") == "" {
			_ = os.Setenv("BRIGHTCART_TEST_MODE", "1")
		}
	})
}
