package constants

const (
	GetOpenEntryByVessel = `
	SELECT * FROM sea_time_entries
	WHERE vessel_id = $1 AND end_time IS NULL
	`

	GetEntryByID = `
	SELECT * FROM sea_time_entries WHERE id = $1
	`

	CountOverlappingEntries = `
	SELECT COUNT(*) FROM sea_time_entries
	WHERE vessel_id = $1
	  AND status <> 'rejected'
	  AND (end_time IS NULL OR end_time > $2)
	  AND start_time < $3
	`

	InsertEntry = `
	INSERT INTO sea_time_entries (
		id, vessel_id, start_time, status,
		start_latitude, start_longitude, is_stationary
	)
	VALUES ($1, $2, $3, 'pending', $4, $5, false)
	RETURNING *
	`

	CloseEntry = `
	UPDATE sea_time_entries
	SET end_time = $2,
	    duration_hours = $3,
	    end_latitude = $4,
	    end_longitude = $5
	WHERE id = $1 AND end_time IS NULL
	RETURNING *
	`

	ListPendingEntries = `
	SELECT e.* FROM sea_time_entries e
	JOIN vessels v ON v.id = e.vessel_id
	WHERE v.owner_id = $1 AND e.status = 'pending' AND e.end_time IS NOT NULL
	ORDER BY e.start_time
	`

	ConfirmEntry = `
	UPDATE sea_time_entries
	SET status = 'confirmed',
	    service_type = $2,
	    watchkeeping_hours = $3,
	    additional_watchkeeping_hours = $4,
	    is_stationary = $5,
	    notes = $6,
	    effective_sea_hours = $7
	WHERE id = $1 AND status = 'pending'
	RETURNING *
	`

	RejectEntry = `
	UPDATE sea_time_entries
	SET status = 'rejected', notes = $2
	WHERE id = $1 AND status = 'pending'
	RETURNING *
	`

	DeleteEntry = `
	DELETE FROM sea_time_entries WHERE id = $1
	`

	ListConfirmedEntriesForMonth = `
	SELECT e.* FROM sea_time_entries e
	JOIN vessels v ON v.id = e.vessel_id
	WHERE v.owner_id = $1
	  AND e.status = 'confirmed'
	  AND e.start_time >= $2 AND e.start_time < $3
	ORDER BY e.start_time
	`

	LeaseDueTasks = `
	UPDATE scheduled_tasks
	SET next_run = $2
	WHERE id IN (
		SELECT id FROM scheduled_tasks
		WHERE is_active = true AND next_run <= $1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING *
	`

	MarkTaskRun = `
	UPDATE scheduled_tasks
	SET last_run = $2, next_run = $3
	WHERE id = $1
	`

	ReleaseTask = `
	UPDATE scheduled_tasks
	SET next_run = $2
	WHERE id = $1
	`

	InsertTask = `
	INSERT INTO scheduled_tasks (id, vessel_id, task_type, interval_hours, next_run, is_active)
	VALUES ($1, $2, $3, $4, $5, true)
	RETURNING *
	`

	DeleteTasksForVessel = `
	DELETE FROM scheduled_tasks WHERE vessel_id = $1
	`

	UpdateTaskObservation = `
	UPDATE scheduled_tasks
	SET last_latitude = $2, last_longitude = $3, last_seen = $4
	WHERE id = $1
	`

	InsertDebugLog = `
	INSERT INTO ais_debug_logs (
		vessel_id, mmsi, api_url, request_time,
		response_status, response_body, authentication_status, error_message
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
)
