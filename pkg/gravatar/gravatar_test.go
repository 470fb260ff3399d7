package gravatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	// md5("myemailaddress@example.com")
	want := "https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?s=200&r=pg&d=mm"
	assert.Equal(t, want, URL("MyEmailAddress@example.com "))
}
