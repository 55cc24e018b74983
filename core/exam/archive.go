package exam

import "time"

// NowFunc returns the current time; tests may replace it.
var NowFunc = func() time.Time { return time.Now().UTC() }

// Archive moves the application identified by id from active to archived, stamping its ArchivedAt.
// Stages are kept as they are. When id is not in active, both lists are returned untouched.
func Archive(active, archived []Application, id string) ([]Application, []Application) {
	idx := indexOf(active, id)
	if idx < 0 {
		return active, archived
	}

	app := active[idx].Clone()
	now := NowFunc()
	app.ArchivedAt = &now

	newActive := make([]Application, 0, len(active)-1)
	newActive = append(newActive, active[:idx]...)
	newActive = append(newActive, active[idx+1:]...)

	newArchived := make([]Application, 0, len(archived)+1)
	newArchived = append(newArchived, archived...)
	newArchived = append(newArchived, app)
	return newActive, newArchived
}

// Remove drops the application identified by id from apps.
// The second value reports whether it was found; apps is returned untouched otherwise.
func Remove(apps []Application, id string) ([]Application, bool) {
	idx := indexOf(apps, id)
	if idx < 0 {
		return apps, false
	}
	out := make([]Application, 0, len(apps)-1)
	out = append(out, apps[:idx]...)
	return append(out, apps[idx+1:]...), true
}

// History lists every application, active ones first.
func History(active, archived []Application) []Application {
	out := make([]Application, 0, len(active)+len(archived))
	out = append(out, active...)
	return append(out, archived...)
}

func indexOf(apps []Application, id string) int {
	for i, app := range apps {
		if app.ID == id {
			return i
		}
	}
	return -1
}
