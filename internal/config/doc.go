// Package config resolves the runtime configuration of a process from
// layered sources and discovers named resource instances.
//
// Sources, lowest to highest precedence:
//  1. Defaults declared by the target structures
//  2. Configuration files (YAML, TOML or JSON, chosen by extension), in
//     the order given
//  3. Environment variables named {PREFIX}_{SECTION}_{FIELD}
//
// Named instances of each resource family (database, redis, mongo, s3) are
// declared in files as lists and in the environment as indexed groups
// ({PREFIX}_{FAMILY}_INSTANCES_{INDEX}_...). The [Scanner] discovers the
// environment groups and [MergeInstances] reconciles them with the file
// lists by name.
//
// The main entry points are [Resolve], which returns the resolved [Config],
// and [Init], which additionally hands every part of it to a [Publisher].
package config
