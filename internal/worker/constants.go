package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgJobQueueFull is logged when a scheduled job is dropped because the
// queue is full
const LogMsgJobQueueFull = "Worker queue full, dropping scheduled job"
