// Package plan turns generation requests into method plans consumed by code
// generation.
//
// Planning pipeline, one target at a time:
//  1. ResolveRequests scans type attributes into typed requests
//  2. Sources are ordered by namespace and name
//  3. Members are collected and matched (see package match)
//  4. Each matched member gets a null-handling branch and a transform hook
//  5. Constructor modes on types with a primary constructor route positional
//     members through passthrough functions
//
// Key types:
//   - Mode, ModeConfig: what a generated method returns and which hooks it calls
//   - Request: target, sources and mode
//   - Planner: builds TargetPlan values; behaviour can be adjusted with an Interceptor
//   - TargetPlan, MethodPlan, MemberStep: the rendered-to-be surface of one target
package plan
