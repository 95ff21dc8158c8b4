package store

// migrationLockKey is the pg_advisory_xact_lock key the migration runner
// holds for the duration of its pass, keeping two daemon instances racing
// to start from interleaving migrations.
const migrationLockKey int64 = 0x7261636b645f6d67 // "rackd_mg"
