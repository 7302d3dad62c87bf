package dedup_test

import (
	"testing"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/dedup"
)

func TestComputeKeyDeterministic(t *testing.T) {
	args := map[string]string{"country": "us", "depth": "3"}
	k1 := dedup.ComputeKey("products", args)
	k2 := dedup.ComputeKey("products", map[string]string{"depth": "3", "country": "us"})
	if k1 != k2 {
		t.Errorf("keys differ for equal argument sets: %q vs %q", k1, k2)
	}
}

func TestComputeKeySpiderMatters(t *testing.T) {
	args := map[string]string{"country": "us"}
	if dedup.ComputeKey("products", args) == dedup.ComputeKey("reviews", args) {
		t.Error("different spiders should yield different keys")
	}
}

func TestComputeKeyArgsMatter(t *testing.T) {
	k1 := dedup.ComputeKey("products", map[string]string{"country": "us"})
	k2 := dedup.ComputeKey("products", map[string]string{"country": "uk"})
	if k1 == k2 {
		t.Error("different argument values should yield different keys")
	}

	k3 := dedup.ComputeKey("products", nil)
	if k1 == k3 {
		t.Error("empty argument set should yield a different key")
	}
}

func TestComputeKeyStringifiedValues(t *testing.T) {
	// Integer 3 and string "3" stringify identically, so parameter sets
	// built from either must map to the same digest.
	fromInt := trawl.JobParameters{"depth": 3}.SpiderArgs()
	fromString := trawl.JobParameters{"depth": "3"}.SpiderArgs()

	k1 := dedup.ComputeKey("products", fromInt)
	k2 := dedup.ComputeKey("products", fromString)
	if k1 != k2 {
		t.Errorf("int 3 and string \"3\" should hash identically: %q vs %q", k1, k2)
	}
}

func TestComputeKeyIgnoresReservedFields(t *testing.T) {
	plain := trawl.JobParameters{"country": "us"}
	tagged := trawl.JobParameters{
		"country":      "us",
		"tags":         []string{"JOBSEQ=0000000001"},
		"units":        2,
		"job_settings": map[string]string{"LOG_LEVEL": "DEBUG"},
		"project_id":   "999",
	}

	k1 := dedup.ComputeKey("products", plain.SpiderArgs())
	k2 := dedup.ComputeKey("products", tagged.SpiderArgs())
	if k1 != k2 {
		t.Error("reserved fields should not affect the dedup key")
	}
}
