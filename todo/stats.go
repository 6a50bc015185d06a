package todo

// ComputeStats summarizes tasks. shared is the result of Store.ListShared.
func ComputeStats(tasks []Task, shared []SharedTask) Stats {
	stats := Stats{
		Total:  len(tasks),
		Shared: len(shared),
	}
	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		}
	}
	stats.Active = stats.Total - stats.Completed
	return stats
}
