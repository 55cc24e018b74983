package exam

// UpdateStage returns a copy of app with upd merged into the stage at index.
// Every other stage and field is left as is and app itself is never modified.
//
// UpdateStage trusts its caller: it neither checks IsStageEditable nor the status vocabulary.
// Service.EditStage is the guarded entry point. An out-of-range index yields an unchanged copy.
func UpdateStage(app Application, index int, upd StageUpdate) Application {
	out := app.Clone()
	if !inRange(out.Stages, index) {
		return out
	}

	stage := &out.Stages[index]
	if upd.Status != nil {
		stage.Status = *upd.Status
	}
	if upd.Score != nil {
		stage.Score = *upd.Score
	}
	if upd.Date != nil {
		stage.Date = *upd.Date
	}
	if upd.Notes != nil {
		stage.Notes = *upd.Notes
	}
	return out
}
