// Package schedule is the scheduling domain driven by smpl scripts: cards,
// tasks and checklists live on a Board, and Build spreads task hours over the
// coming days according to per-weekday capacity and a placement strategy.
package schedule
