package config

import "slices"

// MergeInstances reconciles the instances declared in files with the
// instances discovered in the environment for one resource family.
//
// The result starts as a copy of fileInstances. Each environment instance,
// in order, replaces the first file instance with the same name in place or
// is appended when the name is new. File-only instances are kept untouched.
// Neither input slice is modified.
func MergeInstances[T any](fileInstances, envInstances []Named[T]) []Named[T] {
	return mergeInstances(fileInstances, envInstances, nil)
}

// mergeInstances is [MergeInstances] with a callback invoked for every
// environment instance, reporting whether it replaced a file instance.
func mergeInstances[T any](fileInstances, envInstances []Named[T], onMerge func(name string, replaced bool)) []Named[T] {
	result := make([]Named[T], len(fileInstances), len(fileInstances)+len(envInstances))
	copy(result, fileInstances)

	for _, inst := range envInstances {
		pos := slices.IndexFunc(result, func(item Named[T]) bool {
			return item.Name == inst.Name
		})

		if pos >= 0 {
			result[pos] = inst
		} else {
			result = append(result, inst)
		}

		if onMerge != nil {
			onMerge(inst.Name, pos >= 0)
		}
	}

	return result
}
