package provider

import "fmt"

// systemPrompt frames the model as a project manager for every backend
// that supports a separate system role.
const systemPrompt = "You are an expert project manager who excels at breaking down complex goals into actionable tasks with realistic timelines."

// breakdownPrompt asks for a strict-JSON task breakdown. The shape matches
// what plan.Normalize expects; anything the model gets wrong is repaired or
// rejected there, never here.
func breakdownPrompt(goal string) string {
	return fmt.Sprintf(`Break down this goal into actionable tasks with suggested deadlines and dependencies.

Goal: %s

Please provide a response in the following JSON format:
{
    "title": "Short title for the project",
    "description": "Brief description of the project plan",
    "estimated_duration_days": 14,
    "tasks": [
        {
            "title": "Task title",
            "description": "Detailed description of what needs to be done, including specific deliverables and outcomes",
            "estimated_hours": 8.0,
            "priority": "high|medium|low|critical",
            "dependencies": [],
            "deadline_days_from_start": 3,
            "category": "research|design|development|testing|marketing|deployment|planning",
            "skills_required": ["skill1", "skill2"],
            "deliverables": ["deliverable1", "deliverable2"]
        }
    ]
}

Guidelines:
- Break the goal into 5-10 specific, actionable tasks
- Estimate realistic time requirements in hours (0.5 to 40 hours per task)
- Set priorities (critical, high, medium, low) based on importance and dependencies
- Include dependencies as task indices (e.g., [0, 1] means this task depends on tasks 0 and 1)
- Set deadlines as days from project start
- Ensure tasks are specific and measurable with clear deliverables
- Consider logical sequencing and parallelization opportunities

Respond with only the JSON object, no additional text.`, goal)
}
