package interpreter

const helpText = `## I can help you manage tasks with natural language!

### Search Tasks
• "Show all tasks"
• "Show tasks in To Do column"
• "Find high priority tasks"
• "What's overdue?"
• "Show tasks in [project name]"
• "Find tasks with bug label"

### Create Tasks
• "Create task called [title] in [column]"
• "Add a new task [title]"

### Update Tasks
• "Move [task] to Done"
• "Add tag Bug to [task]"
• "Add label Bug to all tasks in To Do"
• "Set priority high for [task]"
• "Mark [task] as done"
• "Rename [task] to [new title]"

### Delete Tasks
• "Delete task [title]"
• "Delete all tasks in [column] - I confirm"

### Bulk Operations
• "Add tag Bug to all To Do tasks"
• "Move all tasks in Review to Done"
• "Before all To Do tasks add 'Name - '"
• "After all Done tasks add ' - Complete'"

### Info
• "Show project info"
• "How many tasks?"

Just type naturally and I'll try to understand!`

func (in *Interpreter) handleHelp() *Result {
	return &Result{Success: true, Message: helpText, Action: ActionHelp}
}
