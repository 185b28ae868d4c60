package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	host, peer, ns := Names("ps_101")
	assert.Equal(t, "veth0_ps_101", host)
	assert.Equal(t, "veth1_ps_101", peer)
	assert.Equal(t, "netns_ps_101", ns)
}

func TestAddress_Injective(t *testing.T) {
	seen := map[string]int{}
	for n := 42; n <= 254; n++ {
		addr := Address("10.0.0", n)
		key := addr.IP.String() + "|" + addr.MAC.String()
		if prior, ok := seen[key]; ok {
			t.Fatalf("address for n=%d collides with n=%d: %s", n, prior, key)
		}
		seen[key] = n
	}
}

func TestAddress_MatchesOUI(t *testing.T) {
	addr := Address("10.0.0", 100)
	assert.Equal(t, "10.0.0.59", addr.IP.String())
	assert.Equal(t, "02:42:ac:11:00:64", addr.MAC.String())
}
