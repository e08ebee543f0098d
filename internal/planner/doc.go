// Package planner decides the per-group action (merge, sort, or skip) and
// builds a GroupPlan that the pipeline and ffmpeg packages consume.
package planner
