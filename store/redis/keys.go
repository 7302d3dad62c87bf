package redis

// Redis key naming conventions for trawl data.
// All keys are prefixed with "trawl:" to avoid collisions.

const keyPrefix = "trawl:"

// checkpointKey returns the key for a flow checkpoint: trawl:checkpoint:{flowID}
func checkpointKey(flowID string) string { return keyPrefix + "checkpoint:" + flowID }
